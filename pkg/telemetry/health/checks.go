package health

import (
	"context"
	"errors"
	"fmt"
)

// ProbeExpression is generated by the self-test check.
const ProbeExpression = "2x^2 + sin(y)/3"

// GenerateFunc turns expression text into code for a language.
type GenerateFunc func(ctx context.Context, text, language string) (string, error)

// SelfTestCheck returns a check that generates ProbeExpression for every
// language and fails when any printer errors or produces empty code.
func SelfTestCheck(generate GenerateFunc, languages ...string) CheckFunc {
	return func(ctx context.Context) error {
		var errs []error
		for _, language := range languages {
			if err := ctx.Err(); err != nil {
				return err
			}
			code, err := generate(ctx, ProbeExpression, language)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", language, err))
				continue
			}
			if code == "" {
				errs = append(errs, fmt.Errorf("%s: empty output", language))
			}
		}
		return errors.Join(errs...)
	}
}

// Pinger is implemented by storage backends that can verify their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck returns a check that pings a storage backend.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
		return nil
	}
}
