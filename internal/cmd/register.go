package cmd

import (
	"fmt"

	"github.com/dandi/dandi-go/internal/archive"
	"github.com/dandi/dandi-go/internal/consts"
	"github.com/dandi/dandi-go/internal/dandiset"
	"github.com/spf13/cobra"
)

// registerClient, when set, registers the dandiset on an archive instance
// and the assigned identity lands in the written metadata. Without one,
// register produces a local draft.
var registerClient archive.Client

// NewRegisterCommand creates the register command
func NewRegisterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Compose dandiset.yaml metadata for a new dandiset",
		Long: `Compose the metadata of a new dandiset and write it to dandiset.yaml.

The name and description come from --name and --description, or from a
README file via --from-readme: the first top-level heading becomes the
name and the first paragraph after it becomes the description. Explicit
flags override values extracted from the README.

With --dandiset the metadata is written to dandiset.yaml inside that
directory, atomically and under a file lock. Without it the YAML
document is printed to stdout.

Examples:
  # Print metadata for a new dandiset to stdout
  dandi register -n "My dataset" -D "Recordings of ..."

  # Write dandiset.yaml into an existing directory
  dandi register -n "My dataset" -D "Recordings of ..." -d ~/dandisets/new

  # Seed name and description from the project README
  dandi register --from-readme README.md -d .

  # Target the staging instance
  dandi register -n "My dataset" -D "..." --instance dandi-staging -d .`,
		Args:         cobra.NoArgs,
		RunE:         runRegister,
		SilenceUsage: true,
	}

	// Add flags
	cmd.Flags().StringP("name", "n", "", "Name of the new dandiset")
	cmd.Flags().StringP("description", "D", "", "Description of the new dandiset")
	cmd.Flags().StringP("dandiset", "d", "", "Directory to write dandiset.yaml into")
	cmd.Flags().String("from-readme", "", "Extract name and description from this README file")
	cmd.Flags().String("instance", "", "DANDI instance to register with (default from config)")
	addConfigFlags(cmd)

	return cmd
}

// runRegister implements the register command logic
func runRegister(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	dandisetDir, _ := cmd.Flags().GetString("dandiset")
	readmePath, _ := cmd.Flags().GetString("from-readme")
	instanceName, _ := cmd.Flags().GetString("instance")
	if instanceName == "" {
		instanceName = cfg.Instance
	}

	instance, err := consts.GetInstance(instanceName)
	if err != nil {
		return err
	}

	meta := &dandiset.Metadata{}
	if readmePath != "" {
		meta, err = dandiset.FromReadme(readmePath)
		if err != nil {
			return fmt.Errorf("failed to extract metadata from %s: %w", readmePath, err)
		}
	}
	if name != "" {
		meta.Name = name
	}
	if description != "" {
		meta.Description = description
	}
	if meta.Name == "" || meta.Description == "" {
		return fmt.Errorf("a name and a description are required: pass --name/--description or --from-readme")
	}

	if registerClient != nil {
		remote, err := registerClient.RegisterDandiset(cmd.Context(), meta.Name, meta.Description)
		if err != nil {
			return fmt.Errorf("failed to register dandiset with %s: %w", instance.Name, err)
		}
		meta.Identifier = remote.Identifier
		meta.URL = remote.URL
	} else {
		meta.URL = instance.GUI
	}

	meta.Normalize()
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid dandiset metadata: %w", err)
	}

	if dandisetDir == "" {
		return meta.Write(cmd.OutOrStdout())
	}

	if err := meta.Save(dandisetDir); err != nil {
		return fmt.Errorf("failed to write dandiset.yaml: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dandiset.MetadataPath(dandisetDir))
	return nil
}
