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
	"context"
	"strings"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/davidxarnold/costglance/pkg/cloud"
	"gitlab.com/davidxarnold/costglance/pkg/util"
	v "gitlab.com/davidxarnold/costglance/version"
)

var cfgFile string

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Fatalln(err)
		}

		// Search config in home directory with name ".costglance" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".costglance")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// NewRootCmd provides the root cobra command
func NewRootCmd() *cobra.Command {
	var (
		instanceRef string
		profile     string
		region      string
		output      string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:           "costglance",
		Short:         "Resolve cost-attribution attributes for an EC2 instance.",
		Long:          "Costglance looks up the cost-relevant attributes of an EC2 instance (platform, licensing, tenancy, reservations, fleet membership) and exports them as OpenTelemetry resource attributes.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return util.SetupLogger()
		},
	}

	cmd.Version = v.Version

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.costglance.yaml)")
	cmd.PersistentFlags().StringVarP(
		&instanceRef, "instance-id", "i", "",
		"Instance id or node providerID (aws:///<zone>/<id>) to resolve. Empty targets the sole instance in the account.")
	cmd.PersistentFlags().StringVar(
		&profile, "profile", "",
		"AWS shared-config profile to resolve credentials from.")
	cmd.PersistentFlags().StringVar(
		&region, "region", "",
		"AWS region override; defaults to config/environment resolution.")
	cmd.PersistentFlags().StringVarP(
		&output, "output", "o", "table",
		"-o, --output='': Output format. One of: table|json")
	cmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enable debug logging.")

	cobra.OnInitialize(initConfig)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	_ = viper.BindPFlag("instance-id", cmd.PersistentFlags().Lookup("instance-id"))
	_ = viper.BindPFlag("profile", cmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", cmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlags(cmd.Flags())

	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// newResolver builds the EC2-backed resolver from the active configuration
// and returns it together with the normalized target instance id.
func newResolver(ctx context.Context) (*cloud.Resolver, string, error) {
	instanceID, err := util.ParseInstanceID(viper.GetString("instance-id"))
	if err != nil {
		return nil, "", err
	}

	client, err := cloud.NewClient(ctx,
		cloud.WithProfile(viper.GetString("profile")),
		cloud.WithRegion(viper.GetString("region")),
	)
	if err != nil {
		return nil, "", err
	}

	return cloud.NewResolver(client.EC2, client.Region(), cloud.NewCache()), instanceID, nil
}
