// Package factory turns a field specification string into a record Constructor.
//
//	person := factory.MustMakeStruct("id, name, age")
//	ada := person.New(1, "Ada", 30)
//	ada.ToArray() // [[id 1] [name Ada] [age 30]]
package factory
