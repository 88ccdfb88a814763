package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

// ResolveReservation reports how an instance's capacity reservation is being
// consumed: "open" when the reservation still has available capacity, "none"
// when it is exhausted or gone, and empty when the instance has no
// reservation at all (no call is made in that case).
func (r *Resolver) ResolveReservation(ctx context.Context, reservationID string) (string, error) {
	if reservationID == "" {
		return "", nil
	}

	out, err := r.api.DescribeCapacityReservations(ctx, &ec2.DescribeCapacityReservationsInput{
		CapacityReservationIds: []string{reservationID},
	})
	if err != nil {
		return "", fmt.Errorf("describe capacity reservation %q: %w", reservationID, err)
	}
	if len(out.CapacityReservations) == 0 {
		return core.ReservationNone, nil
	}

	if aws.ToInt32(out.CapacityReservations[0].AvailableInstanceCount) > 0 {
		return core.ReservationOpen, nil
	}
	return core.ReservationNone, nil
}
