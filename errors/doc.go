/*
Package errors implements the error taxonomy used across the engine.

Every failure returned to a caller wraps one of the registered root errors.
Root errors carry a numeric code that is stable across releases and safe to
expose on the RPC surface. Use Register to declare extension specific root
errors, Wrap/Wrapf to attach information while bubbling up, and the Is method
of a root error to test what category a failure belongs to.
*/
package errors
