/*
Package utils contains the generic decorators an application composes
around its handler tree: savepoints, panic recovery, request logging and
action tagging.
*/
package utils
