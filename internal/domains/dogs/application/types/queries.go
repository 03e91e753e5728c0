package types

// DetailsQuery resolves a dog for the details screen. Breed and ImageURL are the navigation
// payload and are only compared against the stored record.
type DetailsQuery struct {
	Name     string
	Breed    string
	ImageURL string
}

// PayloadMismatch reports whether the navigation payload disagrees with the stored dog.
func (q DetailsQuery) PayloadMismatch(stored *DogProjection) bool {
	if stored == nil {
		return false
	}
	if q.Breed != "" && q.Breed != stored.Entity.Breed {
		return true
	}
	return q.ImageURL != "" && q.ImageURL != stored.Entity.ImageURL
}

// DogListView is the filtered list together with the header counters.
type DogListView struct {
	Dogs          []*DogProjection
	SearchText    string
	Total         int
	FavoriteCount int
}
