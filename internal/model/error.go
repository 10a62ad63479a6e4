package model

import "errors"

var ErrorInvalidUsernameOrPassword = errors.New("invalid username or password")
var ErrorUserNotFound = errors.New("user not found")
var ErrorLibraryNotFound = errors.New("library not found")
var ErrorAccountNotFound = errors.New("account not found")
var ErrorMembershipNotFound = errors.New("membership not found")
var ErrorPermissionDenied = errors.New("permission denied")
var ErrorDuplicateAccount = errors.New("account already in library")
var ErrorNotResolved = errors.New("identifier not resolved")
