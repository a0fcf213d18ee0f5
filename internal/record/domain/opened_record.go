package domain

// Status reports how a stored record was resolved on read.
type Status string

const (
	StatusOK               Status = "ok"
	StatusDecryptionFailed Status = "decryption_failed"
	StatusNoData           Status = "no_data"
)

const (
	// UnavailableMarker fills every field of a placeholder except FullName and DOB.
	UnavailableMarker = "-"

	decryptionFailedName = "Decryption Error"
	noDataName           = "No Data"
)

// StoredRecord is a record as returned by the Level-2 service: an opaque id and the
// Level-1 envelope. An empty Payload means no data exists. Unavailable is set when the
// service could not remove its own layer.
type StoredRecord struct {
	ID          string
	Payload     string
	Unavailable bool
}

// OpenedRecord is the result of reading one stored record.
type OpenedRecord struct {
	ID     string
	Record StudentRecord
	Status Status
}

// DecryptionFailedPlaceholder stands in for a record whose envelope could not be opened.
func DecryptionFailedPlaceholder(id string) OpenedRecord {
	return placeholder(id, decryptionFailedName, StatusDecryptionFailed)
}

// NoDataPlaceholder stands in for a record that has no payload.
func NoDataPlaceholder(id string) OpenedRecord {
	return placeholder(id, noDataName, StatusNoData)
}

func placeholder(id, name string, status Status) OpenedRecord {
	return OpenedRecord{
		ID: id,
		Record: StudentRecord{
			FullName: name,
			Email:    UnavailableMarker,
			Phone:    UnavailableMarker,
			DOB:      "",
			Gender:   UnavailableMarker,
			Address:  UnavailableMarker,
			Course:   UnavailableMarker,
			Password: UnavailableMarker,
		},
		Status: status,
	}
}

// IsPlaceholder reports whether the record is a stand-in rather than decrypted data.
func (o OpenedRecord) IsPlaceholder() bool {
	return o.Status != StatusOK
}
