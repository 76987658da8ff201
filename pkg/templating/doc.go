/*
Package templating renders generated text with Go's text/template engine.

A TemplateManager owns a built-in "sample" template used by the generate
command to print each generated sequence, plus any *.tmpl.txt files found in
an optional template directory. Templates can call back into an attached
generator through the ngramSentence and ngramParagraphs functions, and have
access to small formatting helpers such as wrap and rule.
*/
package templating
