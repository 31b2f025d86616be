// Package schedule holds the daily boundary table and the countdown to the
// next boundary.
//
// A boundary is the minute since midnight at which a class period ends. The
// table wraps past midnight: after the last boundary of the day comes the
// first boundary of the next one.
package schedule
