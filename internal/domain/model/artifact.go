package model

import "fmt"

// DateLayout is the wire format for target dates, both in the reporting API
// request and in object paths.
const DateLayout = "2006-01-02"

// ObjectPath computes the deterministic object-store path for a stored report
// artifact. It is a pure function of its inputs: repeated runs for the same
// date produce the same path and overwrite the same object instead of
// accumulating duplicates.
func ObjectPath(prefix, reportType, siteLabel, date string) string {
	return fmt.Sprintf("%s/%s/%s/%s.csv.gz", prefix, reportType, siteLabel, date)
}

// ObjectURI renders the fully qualified storage URI the warehouse reads from.
func ObjectURI(bucket, objectPath string) string {
	return "gs://" + bucket + "/" + objectPath
}

// StoredArtifact describes a single compressed report payload residing in the
// object store. The artifact is transient: it exists only as the hand-off
// point between the storage write and the warehouse load within one run.
type StoredArtifact struct {
	Bucket string
	Path   string
}

// URI returns the gs:// location of the artifact.
func (a StoredArtifact) URI() string {
	return ObjectURI(a.Bucket, a.Path)
}
