package cron

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/southsteak/ordering-backend/pkg/logger"
)

type fakeHealthProbe struct {
	categoriesCount int64
	categoriesErr   error
	settingsCount   int64
	settingsErr     error

	categoriesCalls int
	settingsCalls   int
}

func (f *fakeHealthProbe) CountCategories(ctx context.Context) (int64, error) {
	f.categoriesCalls++
	return f.categoriesCount, f.categoriesErr
}

func (f *fakeHealthProbe) CountSiteSettings(ctx context.Context) (int64, error) {
	f.settingsCalls++
	return f.settingsCount, f.settingsErr
}

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls++
	return f.err
}

func newDBHealthJob(t *testing.T, probe *fakeHealthProbe, pinger *fakePinger) Job {
	t.Helper()
	params := DBHealthJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Probe:  probe,
	}
	if pinger != nil {
		params.Redis = pinger
	}
	job, err := NewDBHealthJob(params)
	if err != nil {
		t.Fatalf("NewDBHealthJob: %v", err)
	}
	return job
}

func TestDBHealthJobPrimaryProbe(t *testing.T) {
	probe := &fakeHealthProbe{categoriesCount: 4}
	pinger := &fakePinger{}
	job := newDBHealthJob(t, probe, pinger)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if probe.categoriesCalls != 1 {
		t.Fatalf("categories calls = %d, want 1", probe.categoriesCalls)
	}
	if probe.settingsCalls != 0 {
		t.Fatal("fallback should not run when primary succeeds")
	}
	if pinger.calls != 1 {
		t.Fatalf("ping calls = %d, want 1", pinger.calls)
	}
}

func TestDBHealthJobFallsBackToSettings(t *testing.T) {
	probe := &fakeHealthProbe{
		categoriesErr: errors.New("relation does not exist"),
		settingsCount: 1,
	}
	job := newDBHealthJob(t, probe, nil)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if probe.settingsCalls != 1 {
		t.Fatalf("settings calls = %d, want 1", probe.settingsCalls)
	}
}

func TestDBHealthJobReportsBothFailures(t *testing.T) {
	probe := &fakeHealthProbe{
		categoriesErr: errors.New("primary down"),
		settingsErr:   errors.New("fallback down"),
	}
	job := newDBHealthJob(t, probe, nil)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when both probes fail")
	}
	msg := err.Error()
	for _, want := range []string{"primary down", "fallback down"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestDBHealthJobSurfacesRedisFailure(t *testing.T) {
	probe := &fakeHealthProbe{categoriesCount: 4}
	pinger := &fakePinger{err: errors.New("redis down")}
	job := newDBHealthJob(t, probe, pinger)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error when redis ping fails")
	}
}
