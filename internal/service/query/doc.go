// Package query implements pinepoint-query, a small client of the face server.
//
// It asks for the frame at an instant or for the boundary table and prints
// the answer as JSON, retrying until the server answers when asked to wait.
package query
