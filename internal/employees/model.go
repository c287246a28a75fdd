// Package employees implements the employee record resource: the persisted
// entity and its list, detail, create, update and delete operations.
package employees

// Employee is the persisted HR record. Title and Manager are optional; empty
// strings persist as NULL.
type Employee struct {
	ID         int64
	Name       string
	Email      string
	Department string
	Title      string
	Manager    string
	Active     bool
}

// Filters narrow the list operation. A nil Active means no activity filter.
type Filters struct {
	Department string
	Active     *bool
}

// Counts summarises the store for the dashboard.
type Counts struct {
	Total    int
	Active   int
	Inactive int
}
