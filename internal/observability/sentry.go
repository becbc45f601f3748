package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry включает отправку ошибок, если DSN задан. Пустой DSN — валидная
// конфигурация (dev, тесты): возвращаем no-op flush, CaptureErr при этом
// тихо ничего не шлёт.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
		ServerName:  "auditsvc",
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr — сбои хранилища и фоновых задач; nil безопасен.
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
