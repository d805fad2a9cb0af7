package engine

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"roguecore/internal/event"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	// FovFromActor - радиус обзора берется из VisionComponent игрока.
	FovFromActor = -1

	DefaultMaxStepsPerTick   = 4096
	DefaultTransitionSeconds = 0.25
)

var ErrInvalidConfig = errors.New("invalid engine config")

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят уровень и решения AI.
	Seed int64

	FovRadius         int     // радиус обзора игрока, FovFromActor - из его зрения
	MaxCascadeDepth   int     // предел вложенности каскада событий
	MaxStepsPerTick   int     // сколько действий может сделать один Tick
	TransitionSeconds float32 // длительность перехода видимости
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:              time.Now().UnixNano(),
		FovRadius:         FovFromActor,
		MaxCascadeDepth:   event.DefaultMaxDepth,
		MaxStepsPerTick:   DefaultMaxStepsPerTick,
		TransitionSeconds: DefaultTransitionSeconds,
	}
}

// LoadConfigFromEnv - NewConfig плюс переопределения из окружения.
// Кривые значения пишутся в лог и игнорируются.
func LoadConfigFromEnv() Config {
	cfg := NewConfig()
	log := logger.Component("config")

	envInt := func(key string, dst *int) {
		raw := os.Getenv(key)
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			log.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Invalid integer, default kept.")
			return
		}
		*dst = v
	}

	if raw := os.Getenv("RC_SEED"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.Seed = v
		} else {
			log.WithFields(logrus.Fields{"key": "RC_SEED", "value": raw}).Warn("Invalid seed, random seed kept.")
		}
	}
	envInt("RC_FOV_RADIUS", &cfg.FovRadius)
	envInt("RC_MAX_CASCADE_DEPTH", &cfg.MaxCascadeDepth)
	envInt("RC_MAX_STEPS_PER_TICK", &cfg.MaxStepsPerTick)

	if raw := os.Getenv("RC_TRANSITION_SECONDS"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 32); err == nil {
			cfg.TransitionSeconds = float32(v)
		} else {
			log.WithFields(logrus.Fields{"key": "RC_TRANSITION_SECONDS", "value": raw}).Warn("Invalid duration, default kept.")
		}
	}

	return cfg
}

// Validate проверяет границы параметров.
func (c Config) Validate() error {
	switch {
	case c.FovRadius < FovFromActor:
		return fmt.Errorf("%w: fov radius %d < %d", ErrInvalidConfig, c.FovRadius, FovFromActor)
	case c.MaxCascadeDepth <= 0:
		return fmt.Errorf("%w: cascade depth %d <= 0", ErrInvalidConfig, c.MaxCascadeDepth)
	case c.MaxStepsPerTick <= 0:
		return fmt.Errorf("%w: steps per tick %d <= 0", ErrInvalidConfig, c.MaxStepsPerTick)
	case c.TransitionSeconds < 0:
		return fmt.Errorf("%w: transition %.3fs < 0", ErrInvalidConfig, c.TransitionSeconds)
	}
	return nil
}
