/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

// InstanceRecord is the provider-agnostic view of a compute instance used by
// attribute assembly. It is built from a single describe call and never
// mutated afterwards.
type InstanceRecord struct {
	InstanceID            string
	InstanceType          string
	Region                string
	PlatformDetails       string // provider-assigned label, may omit the OS
	ImageID               string
	Tenancy               string // default, dedicated, or host
	Lifecycle             string // spot or scheduled; empty for on-demand
	CapacityReservationID string
	LicenseARNs           []string
}

// ImageRecord holds the fields of a machine image consulted when a platform
// label needs OS disambiguation.
type ImageRecord struct {
	ImageID         string
	Name            string
	Description     string
	PlatformDetails string
}

// CapacityReservationRecord holds the capacity state of a reservation.
type CapacityReservationRecord struct {
	ReservationID          string
	AvailableInstanceCount int32
}

// FleetRecord holds a fleet identifier and its active instance membership.
type FleetRecord struct {
	FleetID         string
	ActiveInstances []string
}
