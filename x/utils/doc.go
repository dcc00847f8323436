/*
Package utils provides decorators shared by all applications: panic
recovery, savepoints that roll back state on failure, logging and message
tagging.
*/
package utils
