// Command respkv-server runs the respkv in-memory key-value server.
package main

func main() {
	Execute()
}
