package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего движка.
var Log = logrus.New()

// Init инициализирует глобальный логгер и пишет в stdout.
// Вызывается один раз при старте бинарника (или в TestMain).
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput делает то же, что Init, но пишет в w.
// Нужен, когда stdout занят терминалом (tcell) или в тестах.
func InitWithOutput(w io.Writer) {
	l := logrus.New()

	// 1. Уровень из LOG_LEVEL, по умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	// 2. Форматтер: "json" для сбора логов, "text" для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   w == os.Stdout,
		})
	}

	l.SetOutput(w)
	Log = l
}

// Component возвращает логгер с полем component, как это принято во всех системах.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
