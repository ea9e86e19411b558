package usecase

import "fmt"

// ErrPersistence marks a repository failure inside a conference use case.
var ErrPersistence = fmt.Errorf("conference use case persistence error")
