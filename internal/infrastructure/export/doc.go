// Package export provides the serializers of the sales report: a CSV
// writer and a fixed-layout PDF paginator. Both consume the same sequence of
// normalized report rows and read every printed value from it.
package export
