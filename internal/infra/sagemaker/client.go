// Package sagemaker implements the remote endpoint invoker against AWS
// SageMaker. It owns the two AWS clients (runtime for invocations, control
// plane for describe calls) and re-classifies every low-level failure into
// the predict package's error taxonomy so nothing AWS-shaped leaks upward.
package sagemaker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	smcontrol "github.com/aws/aws-sdk-go-v2/service/sagemaker"
	smruntime "github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/smithy-go"

	"github.com/sefineh-ai/sagemaker-gateway/internal/domain/predict"
)

const contentTypeJSON = "application/json"

// RuntimeAPI is the slice of the SageMaker runtime client the invoker needs.
// Kept as an interface so tests can script endpoint behavior.
type RuntimeAPI interface {
	InvokeEndpoint(ctx context.Context, params *smruntime.InvokeEndpointInput, optFns ...func(*smruntime.Options)) (*smruntime.InvokeEndpointOutput, error)
}

// ControlAPI is the slice of the SageMaker control-plane client used for
// endpoint description.
type ControlAPI interface {
	DescribeEndpoint(ctx context.Context, params *smcontrol.DescribeEndpointInput, optFns ...func(*smcontrol.Options)) (*smcontrol.DescribeEndpointOutput, error)
	DescribeEndpointConfig(ctx context.Context, params *smcontrol.DescribeEndpointConfigInput, optFns ...func(*smcontrol.Options)) (*smcontrol.DescribeEndpointConfigOutput, error)
}

// Client invokes a single named SageMaker endpoint. It is safe for
// concurrent use; the underlying AWS clients are concurrency-safe and the
// rest is read-only configuration.
type Client struct {
	runtime      RuntimeAPI
	control      ControlAPI
	endpointName string
	logger       *slog.Logger
}

// New builds a Client from the default AWS credential chain for the given
// region. An empty endpoint name is allowed at construction time; it degrades
// every invocation into an unavailable error instead of failing startup.
func New(ctx context.Context, region, endpointName string, logger *slog.Logger) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPIs(smruntime.NewFromConfig(cfg), smcontrol.NewFromConfig(cfg), endpointName, logger), nil
}

// NewWithAPIs wires explicit API implementations; used by New and by tests.
func NewWithAPIs(runtime RuntimeAPI, control ControlAPI, endpointName string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		runtime:      runtime,
		control:      control,
		endpointName: endpointName,
		logger:       logger,
	}
}

// Invoke sends the canonical payload to the endpoint and returns the raw
// response body. One call is one remote round trip; there is no retry here —
// retry policy belongs to the deployment environment, not this client.
func (c *Client) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	if c.endpointName == "" {
		return nil, fmt.Errorf("%w: endpoint name not configured", predict.ErrEndpointUnavailable)
	}

	out, err := c.runtime.InvokeEndpoint(ctx, &smruntime.InvokeEndpointInput{
		EndpointName: aws.String(c.endpointName),
		ContentType:  aws.String(contentTypeJSON),
		Accept:       aws.String(contentTypeJSON),
		Body:         payload,
	})
	if err != nil {
		return nil, c.classify("invoke", err)
	}
	return out.Body, nil
}

// Describe fetches the endpoint's deployment state and, best effort, the
// instance type of its first production variant.
func (c *Client) Describe(ctx context.Context) (predict.EndpointDetails, error) {
	if c.endpointName == "" {
		return predict.EndpointDetails{}, fmt.Errorf("%w: endpoint name not configured", predict.ErrEndpointUnavailable)
	}

	out, err := c.control.DescribeEndpoint(ctx, &smcontrol.DescribeEndpointInput{
		EndpointName: aws.String(c.endpointName),
	})
	if err != nil {
		return predict.EndpointDetails{}, c.classify("describe", err)
	}

	details := predict.EndpointDetails{
		Status:       string(out.EndpointStatus),
		EndpointARN:  aws.ToString(out.EndpointArn),
		CreatedAt:    out.CreationTime,
		LastModified: out.LastModifiedTime,
	}

	// Instance type is informational only; a failed config lookup does not
	// fail the describe.
	cfgOut, cfgErr := c.control.DescribeEndpointConfig(ctx, &smcontrol.DescribeEndpointConfigInput{
		EndpointConfigName: out.EndpointConfigName,
	})
	if cfgErr != nil {
		c.logger.Warn("describe endpoint config failed",
			"endpoint", c.endpointName, "error", cfgErr)
		return details, nil
	}
	if len(cfgOut.ProductionVariants) > 0 {
		details.InstanceType = string(cfgOut.ProductionVariants[0].InstanceType)
	}
	return details, nil
}

// classify folds AWS-level failures into the gateway taxonomy. A deadline hit
// is a timeout; everything else (credential, validation, model container
// errors, plain transport faults) is unavailable.
func (c *Client) classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s: %v", predict.ErrEndpointTimeout, op, c.endpointName, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s %s: %s: %s",
			predict.ErrEndpointUnavailable, op, c.endpointName, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%w: %s %s: %v", predict.ErrEndpointUnavailable, op, c.endpointName, err)
}
