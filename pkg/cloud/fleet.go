package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ResolveFleet returns the id of the first fleet whose active instances
// include the given instance, or empty when no fleet contains it. This costs
// one describe call per fleet in the account; callers amortize it through
// the cache.
func (r *Resolver) ResolveFleet(ctx context.Context, instanceID string) (string, error) {
	fleets, err := r.api.DescribeFleets(ctx, &ec2.DescribeFleetsInput{})
	if err != nil {
		return "", fmt.Errorf("describe fleets: %w", err)
	}

	for _, fleet := range fleets.Fleets {
		members, err := r.api.DescribeFleetInstances(ctx, &ec2.DescribeFleetInstancesInput{
			FleetId: fleet.FleetId,
		})
		if err != nil {
			return "", fmt.Errorf("describe fleet instances %q: %w", aws.ToString(fleet.FleetId), err)
		}

		for _, active := range members.ActiveInstances {
			if aws.ToString(active.InstanceId) == instanceID {
				return aws.ToString(fleet.FleetId), nil
			}
		}
	}

	return "", nil
}
