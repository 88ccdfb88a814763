package cloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

// Describe fetches the canonical record for the given instance. An empty
// instanceID resolves to the first instance the provider enumerates, which is
// only meaningful when the account holds exactly one instance. Exactly one
// control-plane query is issued.
func (r *Resolver) Describe(ctx context.Context, instanceID string) (core.InstanceRecord, error) {
	input := &ec2.DescribeInstancesInput{}
	if instanceID != "" {
		input.InstanceIds = []string{instanceID}
	}

	out, err := r.api.DescribeInstances(ctx, input)
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "InvalidInstanceID.NotFound" {
			return core.InstanceRecord{}, fmt.Errorf("instance %q: %w", instanceID, ErrInstanceNotFound)
		}
		return core.InstanceRecord{}, fmt.Errorf("describe instance %q: %w", instanceID, err)
	}

	for _, reservation := range out.Reservations {
		if len(reservation.Instances) > 0 {
			return r.toInstanceRecord(reservation.Instances[0]), nil
		}
	}

	return core.InstanceRecord{}, fmt.Errorf("instance %q: %w", instanceID, ErrInstanceNotFound)
}

// toInstanceRecord maps an EC2 instance to the provider-agnostic record.
func (r *Resolver) toInstanceRecord(inst ec2types.Instance) core.InstanceRecord {
	rec := core.InstanceRecord{
		InstanceID:            aws.ToString(inst.InstanceId),
		InstanceType:          string(inst.InstanceType),
		Region:                r.region,
		PlatformDetails:       aws.ToString(inst.PlatformDetails),
		ImageID:               aws.ToString(inst.ImageId),
		Lifecycle:             string(inst.InstanceLifecycle),
		CapacityReservationID: aws.ToString(inst.CapacityReservationId),
		Tenancy:               "default",
	}

	if inst.Placement != nil && inst.Placement.Tenancy != "" {
		rec.Tenancy = string(inst.Placement.Tenancy)
	}

	for _, lic := range inst.Licenses {
		if lic.LicenseConfigurationArn != nil {
			rec.LicenseARNs = append(rec.LicenseARNs, *lic.LicenseConfigurationArn)
		}
	}

	return rec
}
