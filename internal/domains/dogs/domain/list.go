package domain

import (
	"iter"
	"slices"
	"strings"
)

// DogList owns the favorite and non-favorite collections together with the set of known names.
// It is not safe for concurrent use; callers serialise access.
type DogList struct {
	favorites  []*Dog
	others     []*Dog
	names      map[string]struct{}
	searchText string
}

// NewDogList builds an empty list.
func NewDogList() *DogList {
	return &DogList{names: map[string]struct{}{}}
}

// AddDog appends a new non-favorite dog unless the name is already taken.
// On a duplicate the existing dog is returned with added=false.
func (l *DogList) AddDog(name, breed, imageURL string) (dog *Dog, added bool) {
	if _, ok := l.names[name]; ok {
		existing, _ := l.FindByName(name)
		return existing, false
	}
	dog = &Dog{Name: name, Breed: breed, ImageURL: imageURL}
	l.others = append(l.others, dog)
	l.names[name] = struct{}{}
	return dog, true
}

// RemoveDog drops the dog from whichever collection holds it and forgets its name.
func (l *DogList) RemoveDog(dog *Dog) bool {
	if dog == nil {
		return false
	}
	var removed bool
	l.favorites, removed = without(l.favorites, dog)
	if !removed {
		l.others, removed = without(l.others, dog)
	}
	if removed {
		delete(l.names, dog.Name)
	}
	return removed
}

// ToggleFavorite flips the favorite flag and moves the dog between collections.
// A new favorite goes to the front of favorites; an unfavorited dog goes to the back of others.
// When the dog is missing from the source collection the flag is still flipped but nothing
// moves, and moved is false.
func (l *DogList) ToggleFavorite(dog *Dog) (moved bool) {
	if dog == nil {
		return false
	}
	dog.IsFavorite = !dog.IsFavorite
	if dog.IsFavorite {
		if l.others, moved = without(l.others, dog); moved {
			l.favorites = slices.Insert(l.favorites, 0, dog)
		}
		return moved
	}
	if l.favorites, moved = without(l.favorites, dog); moved {
		l.others = append(l.others, dog)
	}
	return moved
}

// SetSearchText stores the current filter string as given.
func (l *DogList) SetSearchText(text string) {
	l.searchText = text
}

// SearchText returns the current filter string.
func (l *DogList) SearchText() string {
	return l.searchText
}

// FilteredDogs yields favorites then others whose name contains the search text, ignoring case.
// The sequence reads the list state each time it is ranged over.
func (l *DogList) FilteredDogs() iter.Seq[*Dog] {
	return func(yield func(*Dog) bool) {
		needle := strings.ToLower(l.searchText)
		for _, bucket := range [][]*Dog{l.favorites, l.others} {
			for _, dog := range bucket {
				if !strings.Contains(strings.ToLower(dog.Name), needle) {
					continue
				}
				if !yield(dog) {
					return
				}
			}
		}
	}
}

// FindByName returns the first dog with the given name, favorites first.
func (l *DogList) FindByName(name string) (*Dog, bool) {
	for _, bucket := range [][]*Dog{l.favorites, l.others} {
		if i := slices.IndexFunc(bucket, func(d *Dog) bool { return d.Name == name }); i >= 0 {
			return bucket[i], true
		}
	}
	return nil, false
}

// Contains reports whether the name is known.
func (l *DogList) Contains(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Favorites returns a copy of the favorites collection.
func (l *DogList) Favorites() []*Dog {
	return slices.Clone(l.favorites)
}

// Others returns a copy of the non-favorites collection.
func (l *DogList) Others() []*Dog {
	return slices.Clone(l.others)
}

// Len is the total number of dogs.
func (l *DogList) Len() int {
	return len(l.favorites) + len(l.others)
}

// FavoriteCount is the number of favorites.
func (l *DogList) FavoriteCount() int {
	return len(l.favorites)
}

func without(list []*Dog, dog *Dog) ([]*Dog, bool) {
	i := slices.Index(list, dog)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}
