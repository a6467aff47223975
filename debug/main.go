package main

import (
	"fmt"

	"github.com/mayowa/crml"
)

const base = `%html
  %body
    %header = The Base
    %slot[main]
    %footer = {year}
  %/body
%/html`

const tplSource = `%+base.main
- a := page.A
%div.class#id[data-a=value]
  a is {a}
  - if a > 1 {
    %h1 = a is big ({a})
  - }

%script
  function test(a, b) { return a + b; }
%/script
%!code
  %p = shown as written {a}
%/!code`

func main() {
	println(tplSource)

	c := crml.NewWithResolver(crml.MapResolver{"base": base})
	body, err := c.CompileString(tplSource)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("\n== go ==")
	fmt.Print(body.GoSource())
	fmt.Println("\n== preview ==")
	fmt.Println(body.Preview())
	for _, p := range crml.Check(body) {
		fmt.Println("check:", p)
	}
}
