package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db/models"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

// DBHealthJobParams configure the keep-alive probe.
type DBHealthJobParams struct {
	Logger *logger.Logger
	Probe  healthProbe
	Redis  redisPinger
}

// healthProbe runs lightweight catalog queries to keep the database warm.
type healthProbe interface {
	CountCategories(ctx context.Context) (int64, error)
	CountSiteSettings(ctx context.Context) (int64, error)
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// NewDBHealthJob builds the job that touches the database on a schedule so
// free-tier hosting does not suspend it. The categories query is the primary
// probe; site_settings is the fallback when categories fails.
func NewDBHealthJob(params DBHealthJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Probe == nil {
		return nil, fmt.Errorf("health probe required")
	}
	return &dbHealthJob{
		logg:  params.Logger,
		probe: params.Probe,
		redis: params.Redis,
	}, nil
}

type dbHealthJob struct {
	logg  *logger.Logger
	probe healthProbe
	redis redisPinger
}

func (j *dbHealthJob) Name() string { return "db-health" }

func (j *dbHealthJob) Run(ctx context.Context) error {
	count, probeErr := j.probe.CountCategories(ctx)
	source := "categories"
	if probeErr != nil {
		fallbackCount, fallbackErr := j.probe.CountSiteSettings(ctx)
		if fallbackErr != nil {
			return fmt.Errorf("db health probe: %w", multierr.Append(probeErr, fallbackErr))
		}
		count = fallbackCount
		source = "site_settings"
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"source": source,
		"rows":   count,
	})

	if j.redis != nil {
		if err := j.redis.Ping(ctx); err != nil {
			j.logg.Warn(logCtx, "redis ping failed during health probe")
			j.logg.Info(logCtx, "db health probe complete")
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	j.logg.Info(logCtx, "db health probe complete")
	return nil
}

// GormHealthProbe implements healthProbe against the live schema.
type GormHealthProbe struct {
	db *gorm.DB
}

// NewGormHealthProbe builds a probe bound to the provided connection.
func NewGormHealthProbe(db *gorm.DB) *GormHealthProbe {
	return &GormHealthProbe{db: db}
}

func (p *GormHealthProbe) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

func (p *GormHealthProbe) CountSiteSettings(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.SiteSettings{}).Count(&count).Error
	return count, err
}
