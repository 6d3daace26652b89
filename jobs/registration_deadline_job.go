package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// RegistrationCloser closes registration on events whose deadline passed.
type RegistrationCloser interface {
	CloseExpiredRegistrations(ctx context.Context) (int64, error)
}

// RegistrationDeadlineJob periodically closes registration on events past
// their registration deadline.
type RegistrationDeadlineJob struct {
	closer   RegistrationCloser
	schedule string
	cron     *cron.Cron
}

func NewRegistrationDeadlineJob(closer RegistrationCloser, schedule string) *RegistrationDeadlineJob {
	return &RegistrationDeadlineJob{
		closer:   closer,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start runs one pass immediately and then follows the schedule.
func (j *RegistrationDeadlineJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return fmt.Errorf("schedule registration deadline job %q: %w", j.schedule, err)
	}

	go j.Run()
	j.cron.Start()
	log.Printf("Registration deadline job started, schedule=%q", j.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (j *RegistrationDeadlineJob) Stop() {
	<-j.cron.Stop().Done()
	log.Println("Registration deadline job stopped")
}

func (j *RegistrationDeadlineJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	closed, err := j.closer.CloseExpiredRegistrations(ctx)
	if err != nil {
		log.Printf("Error closing expired registrations: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("Closed registration on %d events", closed)
	}
}
