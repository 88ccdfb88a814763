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

package util

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// SetupLogger sets configuration for the default logger
func SetupLogger() (err error) {
	var (
		lf = strings.ToLower(viper.GetString("output"))
	)

	// Set log format
	switch lf {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{
			DisableLevelTruncation: true,
		})
	}

	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

// ParseInstanceID normalizes an instance reference into a bare instance id.
// It accepts either the id itself ("i-1234567890abcdef0") or a Kubernetes
// node providerID ("aws:///us-west-2a/i-1234567890abcdef0"), so the resolver
// can be pointed at a node object directly.
func ParseInstanceID(ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if !strings.Contains(ref, "://") {
		return ref, nil
	}

	scheme, rest, _ := strings.Cut(ref, "://")
	if scheme != "aws" {
		return "", fmt.Errorf("unsupported provider %q in providerID %q", scheme, ref)
	}

	parts := strings.Split(strings.TrimPrefix(rest, "/"), "/")
	id := parts[len(parts)-1]
	if id == "" {
		return "", fmt.Errorf("no instance id in providerID %q", ref)
	}
	return id, nil
}
