package types

// AddDogInput carries the add-dog form values.
type AddDogInput struct {
	Name     string
	Breed    string
	ImageURL string
}

// DogIdentifier addresses a dog by its unique name.
type DogIdentifier struct {
	Name string
}

// SetSearchTextInput carries the raw filter text typed by the user.
type SetSearchTextInput struct {
	Text string
}
