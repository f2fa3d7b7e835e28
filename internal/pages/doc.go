// Package pages holds the console's caller pages. Each page wraps one admin
// API call in apicall.Execute, renders the data on success, and offers a
// retry when the call failed because the network did.
package pages
