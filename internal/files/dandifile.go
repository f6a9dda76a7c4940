// Package files defines typed representations for the local files and
// directories that make up a dandiset, together with the discovery
// traversal that finds and classifies them.
//
// Every discovered path maps to exactly one DandiFile. The two top-level
// kinds are DandisetMetadataFile, the dandiset.yaml at a dandiset root,
// and LocalAsset, anything that can be uploaded to a DANDI instance as an
// asset. Assets found below a BIDS dataset_description.json additionally
// implement BIDSAsset and hold a non-owning back-reference to the dataset
// description that governs them.
package files

import "weak"

// DandiFile is a local file or directory of interest to DANDI.
type DandiFile interface {
	// FilePath returns the file's location on disk.
	FilePath() string
	// Path returns the file's location relative to the root of its
	// dandiset, in forward-slash form.
	Path() string
}

// LocalAsset is a DandiFile that can be uploaded to a DANDI instance as an
// asset.
type LocalAsset interface {
	DandiFile
	// Kind reports the classified asset kind.
	Kind() FileKind
}

// BIDSAsset is a LocalAsset that lies inside a BIDS dataset.
type BIDSAsset interface {
	LocalAsset
	// DatasetDescription returns the dataset_description.json asset
	// governing this file. It returns nil once the owner of that asset
	// has released it; the back-reference never keeps it alive.
	DatasetDescription() *BIDSDatasetDescriptionAsset
}

// dandiFile carries the two identity fields shared by every DandiFile.
type dandiFile struct {
	filepath string
	path     string
}

func (f dandiFile) FilePath() string { return f.filepath }
func (f dandiFile) Path() string     { return f.path }

// DandisetMetadataFile represents the dandiset.yaml file at the root of a
// dandiset. It is not an asset and is only yielded by the traversal on
// request.
type DandisetMetadataFile struct {
	dandiFile
}

// NWBAsset represents a single-file NWB asset.
type NWBAsset struct {
	dandiFile
}

// Kind returns KindNWB.
func (a *NWBAsset) Kind() FileKind { return KindNWB }

// VideoAsset represents a video file in one of the container formats
// accepted alongside neurophysiology data.
type VideoAsset struct {
	dandiFile
}

// Kind returns KindVideo.
func (a *VideoAsset) Kind() FileKind { return KindVideo }

// GenericAsset represents a file of no recognized type.
type GenericAsset struct {
	dandiFile
}

// Kind returns KindGeneric.
func (a *GenericAsset) Kind() FileKind { return KindGeneric }

// ZarrAsset represents a Zarr store. The whole directory is one opaque
// asset; the traversal never descends into it.
type ZarrAsset struct {
	dandiFile
}

// Kind returns KindZarr.
func (a *ZarrAsset) Kind() FileKind { return KindZarr }

// BIDSDatasetDescriptionAsset represents a dataset_description.json file.
// It anchors a BIDS dataset: assets discovered below it link back to it
// and are recorded in its dataset file collection in discovery order.
type BIDSDatasetDescriptionAsset struct {
	dandiFile
	datasetFiles []BIDSAsset
}

// Kind returns KindBIDSDatasetDescription.
func (a *BIDSDatasetDescriptionAsset) Kind() FileKind { return KindBIDSDatasetDescription }

// DatasetFiles returns the assets governed by this dataset description, in
// the order they were discovered. The slice is owned by the asset; callers
// must not mutate it.
func (a *BIDSDatasetDescriptionAsset) DatasetFiles() []BIDSAsset { return a.datasetFiles }

// bidsLink is the back-reference a BIDS asset holds to its governing
// dataset description. The reference is weak: whoever constructed the
// description controls its lifetime, and the link never extends it.
type bidsLink struct {
	ref weak.Pointer[BIDSDatasetDescriptionAsset]
}

func (l bidsLink) DatasetDescription() *BIDSDatasetDescriptionAsset { return l.ref.Value() }

// NWBBIDSAsset is an NWB file inside a BIDS dataset.
type NWBBIDSAsset struct {
	dandiFile
	bidsLink
}

// Kind returns KindNWB.
func (a *NWBBIDSAsset) Kind() FileKind { return KindNWB }

// ZarrBIDSAsset is a Zarr store inside a BIDS dataset.
type ZarrBIDSAsset struct {
	dandiFile
	bidsLink
}

// Kind returns KindZarr.
func (a *ZarrBIDSAsset) Kind() FileKind { return KindZarr }

// GenericBIDSAsset is any other file inside a BIDS dataset. Video files
// carry no special meaning under BIDS and collapse onto this type too.
type GenericBIDSAsset struct {
	dandiFile
	bidsLink
}

// Kind returns KindGeneric.
func (a *GenericBIDSAsset) Kind() FileKind { return KindGeneric }

var (
	_ DandiFile  = (*DandisetMetadataFile)(nil)
	_ LocalAsset = (*NWBAsset)(nil)
	_ LocalAsset = (*VideoAsset)(nil)
	_ LocalAsset = (*GenericAsset)(nil)
	_ LocalAsset = (*ZarrAsset)(nil)
	_ LocalAsset = (*BIDSDatasetDescriptionAsset)(nil)
	_ BIDSAsset  = (*NWBBIDSAsset)(nil)
	_ BIDSAsset  = (*ZarrBIDSAsset)(nil)
	_ BIDSAsset  = (*GenericBIDSAsset)(nil)
)
