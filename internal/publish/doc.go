// Package publish defines the companion feed that receives every computed
// frame, and the payload it carries.
package publish
