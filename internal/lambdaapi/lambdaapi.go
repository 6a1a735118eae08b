// Package lambdaapi adapts handler funcs to the Lambda function URL runtime.
package lambdaapi

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/domain"
	"github.com/hamed0406/healthprobe/internal/handler"
	"github.com/hamed0406/healthprobe/internal/logging"
)

// Handler is the signature passed to lambda.Start. domain.Response marshals
// to the function URL response shape, so it is returned as is.
type Handler func(ctx context.Context, req events.LambdaFunctionURLRequest) (domain.Response, error)

// Wrap turns fn into a Lambda handler. The incoming request is not
// inspected. Errors are returned to the runtime untouched, which records the
// invocation as failed rather than answering with a status code.
func Wrap(name string, l *zap.Logger, fn handler.Func) Handler {
	return func(ctx context.Context, _ events.LambdaFunctionURLRequest) (domain.Response, error) {
		log := l.With(zap.String("function", name))
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			log = log.With(zap.String("aws_request_id", lc.AwsRequestID))
		}

		resp, err := fn(logging.WithContext(ctx, log))
		if err != nil {
			log.Error("invocation_failed",
				zap.Bool("probe_error", handler.IsProbeError(err)),
				zap.Error(err),
			)
			return domain.Response{}, err
		}

		log.Info("invocation_done", zap.Int("status", resp.StatusCode))
		return resp, nil
	}
}
