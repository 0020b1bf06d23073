package domain

import "time"

type Customer struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	// Document files are stored as opaque filenames produced by the storage
	// service; the files themselves live outside the database.
	PassportFile string    `json:"passport_file,omitempty"`
	LicenceFile  string    `json:"licence_file,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
