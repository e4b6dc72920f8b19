package normalize

// Record is the normalized output produced for every accepted webhook.
// The wire names are the contract consumed downstream and must not change.
// All fields are nullable; a field that could not be resolved is emitted as
// JSON null rather than omitted.
type Record struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Product *string `json:"product"`
	Action  *string `json:"action"`
	Tag     *string `json:"tag"`

	// ProductID always carries the same value as Tag. The duplication is
	// part of the output contract, not an accident.
	ProductID *string `json:"idproduto"`

	Amount        *int64   `json:"valor"`
	SettledAmount *float64 `json:"liquidado"`
}
