/*
Package tandemtest provides mocks and helpers for testing handlers and
decorators without running a full application.
*/
package tandemtest
