// Package consts holds the reserved filenames, extension registries, and
// known DANDI instances shared across the tool.
package consts

import "fmt"

// DandisetMetadataFile is the reserved name of the dandiset-level metadata
// file. Only the copy at the dandiset root is treated as metadata; a file
// of the same name elsewhere is an ordinary asset.
const DandisetMetadataFile = "dandiset.yaml"

// BIDSDatasetDescription is the reserved filename that anchors a BIDS
// dataset. Every asset discovered at or below its directory belongs to
// that dataset's context.
const BIDSDatasetDescription = "dataset_description.json"

// NWBExtension marks single-file NWB (Neurodata Without Borders) assets.
const NWBExtension = ".nwb"

// VideoFileExtensions are the video container formats accepted as assets
// alongside neurophysiology data. Matching is case-sensitive.
var VideoFileExtensions = []string{".mp4", ".avi", ".wmv", ".mov", ".flv", ".mkv"}

// ZarrExtensions are the directory suffixes recognized as Zarr stores. A
// matching non-empty directory is treated as one opaque asset and never
// recursed into.
var ZarrExtensions = []string{".ngff", ".zarr"}

// DandiInstance describes one deployment of the DANDI archive.
type DandiInstance struct {
	Name string
	GUI  string
	API  string
}

// DefaultInstance is the instance commands talk to when none is configured.
const DefaultInstance = "dandi"

// KnownInstances registers the DANDI deployments this tool knows about,
// keyed by instance name.
var KnownInstances = map[string]DandiInstance{
	"dandi": {
		Name: "dandi",
		GUI:  "https://dandiarchive.org",
		API:  "https://api.dandiarchive.org/api",
	},
	"dandi-staging": {
		Name: "dandi-staging",
		GUI:  "https://gui-staging.dandiarchive.org",
		API:  "https://api-staging.dandiarchive.org/api",
	},
	"dandi-api-local-docker-tests": {
		Name: "dandi-api-local-docker-tests",
		GUI:  "http://localhost:8085",
		API:  "http://localhost:8000/api",
	},
}

// GetInstance looks up a known DANDI instance by name.
func GetInstance(name string) (DandiInstance, error) {
	instance, ok := KnownInstances[name]
	if !ok {
		return DandiInstance{}, fmt.Errorf("unknown DANDI instance %q", name)
	}
	return instance, nil
}
