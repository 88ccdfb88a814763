package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EC2API captures the control-plane operations the resolver issues. The
// *ec2.Client satisfies it; tests substitute a fake.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	DescribeCapacityReservations(ctx context.Context, params *ec2.DescribeCapacityReservationsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeCapacityReservationsOutput, error)
	DescribeFleets(ctx context.Context, params *ec2.DescribeFleetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeFleetsOutput, error)
	DescribeFleetInstances(ctx context.Context, params *ec2.DescribeFleetInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeFleetInstancesOutput, error)
}

// Client wraps the EC2 client together with the region it was resolved for.
type Client struct {
	EC2 *ec2.Client

	region string
}

// ClientOption customizes credential and region resolution.
type ClientOption func(*clientOptions)

type clientOptions struct {
	profile string
	region  string
}

// WithProfile selects a shared-config profile.
func WithProfile(profile string) ClientOption {
	return func(o *clientOptions) {
		o.profile = profile
	}
}

// WithRegion overrides the region from config or environment.
func WithRegion(region string) ClientOption {
	return func(o *clientOptions) {
		o.region = region
	}
}

// NewClient resolves credentials and region through the default AWS config
// chain and returns a ready EC2 client. Failing to resolve either is a
// configuration error, fatal at startup.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	var configOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		configOpts = append(configOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrMissingConfiguration, err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: no AWS region configured", ErrMissingConfiguration)
	}

	return &Client{
		EC2:    ec2.NewFromConfig(cfg),
		region: cfg.Region,
	}, nil
}

// Region returns the region the client was resolved for.
func (c *Client) Region() string {
	return c.region
}
