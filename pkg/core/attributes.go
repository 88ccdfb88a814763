/*
Package core provides the cost-attribution attribute model and the pure
assembly rules for it, independent of any cloud SDK or telemetry transport.
*/

package core

import "strings"

// Attribute keys consumed by the downstream cost engine. These strings are a
// compatibility surface and must not be renamed.
const (
	KeyInstanceID                    = "aws.ec2.instance_id"
	KeyInstanceType                  = "aws.ec2.instance_type"
	KeyRegion                        = "cloud.region"
	KeyOSType                        = "os.type"
	KeyCloudPlatform                 = "cloud.platform"
	KeyPlatformDetails               = "aws.ec2.platform_details"
	KeyLicenseModel                  = "aws.ec2.license_model"
	KeyTenancy                       = "aws.ec2.tenancy"
	KeyInstanceLifecycle             = "aws.ec2.instance_lifecycle"
	KeyCapacityReservationID         = "aws.ec2.capacity_reservation_id"
	KeyCapacityReservationPreference = "aws.ec2.capacity_reservation_preference"
	KeyFleetID                       = "aws.ec2.fleet_id"
)

// PlatformAWSEC2 is the constant value of the cloud.platform attribute.
const PlatformAWSEC2 = "aws_ec2"

// Default provider platform labels. Instances carrying one of these need no
// explicit platform-details attribute; the cost engine treats absence as the
// default.
const (
	PlatformDefaultLinux   = "Linux/UNIX"
	PlatformDefaultWindows = "Windows"
)

// License model values.
const (
	LicenseModelBYOL = "bring your own license"
	LicenseModelNone = "no license required"
)

// os.type values.
const (
	OSTypeLinux   = "linux"
	OSTypeWindows = "windows"
)

// Capacity reservation preference values.
const (
	ReservationOpen = "open"
	ReservationNone = "none"
)

// AttributeSet maps attribute keys to string, bool, or integer values.
// Required keys are always present; optional keys appear only when their
// source condition holds, never as empty placeholders.
type AttributeSet map[string]any

// Enrichment carries the results of the optional post-describe lookups.
// Empty fields mean the lookup resolved to absent.
type Enrichment struct {
	PlatformDetails       string // clarified platform label
	ReservationPreference string // ReservationOpen or ReservationNone
	FleetID               string
}

// BuildAttributes assembles the attribute set for an instance. It is a pure
// function: all network lookups happen before this point.
func BuildAttributes(rec InstanceRecord, enr Enrichment) AttributeSet {
	platform := enr.PlatformDetails
	if platform == "" {
		platform = rec.PlatformDetails
	}

	attrs := AttributeSet{
		KeyInstanceID:    rec.InstanceID,
		KeyInstanceType:  rec.InstanceType,
		KeyRegion:        rec.Region,
		KeyOSType:        OSTypeOf(platform),
		KeyCloudPlatform: PlatformAWSEC2,
		KeyLicenseModel:  licenseModel(rec.LicenseARNs),
		KeyTenancy:       rec.Tenancy,
	}

	if platform != "" && !IsDefaultPlatform(platform) {
		attrs[KeyPlatformDetails] = platform
	}
	if rec.Lifecycle != "" {
		attrs[KeyInstanceLifecycle] = rec.Lifecycle
	}
	if rec.CapacityReservationID != "" {
		attrs[KeyCapacityReservationID] = rec.CapacityReservationID
		if enr.ReservationPreference != "" {
			attrs[KeyCapacityReservationPreference] = enr.ReservationPreference
		}
	}
	if enr.FleetID != "" {
		attrs[KeyFleetID] = enr.FleetID
	}

	return attrs
}

// OSTypeOf derives the os.type value from a (clarified) platform label.
func OSTypeOf(platform string) string {
	if strings.Contains(strings.ToLower(platform), "windows") {
		return OSTypeWindows
	}
	return OSTypeLinux
}

// IsDefaultPlatform reports whether the label is one of the two provider
// defaults that need no explicit platform-details attribute.
func IsDefaultPlatform(label string) bool {
	return label == PlatformDefaultLinux || label == PlatformDefaultWindows
}

func licenseModel(licenses []string) string {
	if len(licenses) > 0 {
		return LicenseModelBYOL
	}
	return LicenseModelNone
}
