// Package schedule dispara el tick programado con una expresión cron.
package schedule

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Tick func(ctx context.Context) error

type Scheduler struct {
	c     *cron.Cron
	sched cron.Schedule
	loc   *time.Location
}

// New valida la expresión (5 campos estándar o descriptores tipo @every) y
// la zona. No arranca nada hasta Start.
func New(expr, zone string, tick Tick) (*Scheduler, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("schedule zone %q: %w", zone, err)
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", expr, err)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)
	c.Schedule(sched, cron.FuncJob(func() {
		// los errores ya los loguea el tick; no hay a quién devolverlos
		_ = tick(context.Background())
	}))
	return &Scheduler{c: c, sched: sched, loc: loc}, nil
}

func (s *Scheduler) Start() {
	s.c.Start()
	log.Printf("⏰ scheduler started, next tick %s", s.Next(time.Now()).Format(time.RFC1123))
}

// Stop frena el cron; el contexto se cierra cuando terminan los ticks en curso.
func (s *Scheduler) Stop() context.Context { return s.c.Stop() }

func (s *Scheduler) Next(from time.Time) time.Time { return s.sched.Next(from.In(s.loc)) }
