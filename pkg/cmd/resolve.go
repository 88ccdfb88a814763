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

package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewResolveCmd provides the resolve command: a one-shot resolution printed
// to stdout.
func NewResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve and print the attribute set for an instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resolver, instanceID, err := newResolver(ctx)
			if err != nil {
				return err
			}

			attrs, err := resolver.Resolve(ctx, instanceID)
			if err != nil {
				return err
			}

			log.Debugf("resolved %d attributes", len(attrs))
			return render(os.Stdout, attrs)
		},
	}
}
