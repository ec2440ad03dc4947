package campus

import "fmt"

// Named is implemented by every record that can be shown in a selection list.
type Named interface {
	DisplayName() string
}

// PersonInfo is the identity shared by students and instructors.
type PersonInfo struct {
	Name string
	Age  int
}

// DisplayName returns "{name}, {age}".
func (p PersonInfo) DisplayName() string {
	return fmt.Sprintf("%s, %d", p.Name, p.Age)
}
