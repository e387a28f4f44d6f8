package main

import "github.com/goplus/hxbuild/cmd/hxbuild/internal"

func main() {
	internal.Execute()
}
