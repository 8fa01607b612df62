package api

import "errors"

var ErrorOutofMemory = errors.New("pool.outofmemory")
var ErrorInvalidPointer = errors.New("pool.invalidpointer")
var ErrorNotFound = errors.New("list.notfound")
var ErrorEmptyList = errors.New("list.empty")
