package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/sharewarp/timetrack/internal/config"
	"github.com/sharewarp/timetrack/internal/store"
)

// loadStoreClient reads the config file and environment and builds the
// record-store client. Environment settings win over the file.
func loadStoreClient(ctx context.Context) (*store.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	env, err := config.LoadEnv()
	if err != nil {
		return nil, cfg, err
	}

	opts := store.Options{
		BaseURL:        cfg.Store.BaseURL,
		BaseID:         cfg.Store.BaseID,
		WorkHoursTable: cfg.Store.WorkHoursTable,
		EmployeesTable: cfg.Store.EmployeesTable,
		Token:          env.Token,
	}
	if env.BaseURL != "" {
		opts.BaseURL = env.BaseURL
	}
	if env.BaseID != "" {
		opts.BaseID = env.BaseID
	}

	client, err := store.New(ctx, opts)
	if err != nil {
		return nil, cfg, err
	}
	return client, cfg, nil
}

// requireLogin returns the logged-in username or an error telling the
// user to log in first.
func requireLogin() (string, error) {
	s, err := config.LoadSession()
	if err != nil {
		return "", err
	}
	if s == nil || s.Username == "" {
		return "", errors.New("not logged in: run 'ttrack login <username>' first")
	}
	return s.Username, nil
}

// configuredClock returns the wall clock used for normalization. A
// timezone from the config file pins entered times to that zone; empty
// means the system timezone.
func configuredClock(cfg config.Config) func() time.Time {
	loc := time.Local
	if cfg.Timezone != "" {
		if l, err := time.LoadLocation(cfg.Timezone); err == nil {
			loc = l
		}
	}
	return func() time.Time { return time.Now().In(loc) }
}
