// Package timetable builds a boundary table from an iCalendar file.
//
// Every class in the calendar contributes the time of day it ends. The date
// is ignored: the watch face repeats the same table every day.
package timetable
