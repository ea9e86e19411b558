package usecase

import "fmt"

// ErrPersistence marks a repository failure inside a chat use case so
// controllers can map it to a 500 without leaking driver errors.
var ErrPersistence = fmt.Errorf("chat use case persistence error")
