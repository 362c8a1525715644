// Package git reads the source revision of the documented project so build
// reports can say which commit the API documentation was generated from.
package git
