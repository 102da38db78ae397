// Package main provides the entry point for the website crawl service.
package main

func main() {
	Execute()
}
