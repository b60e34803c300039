package cgen

import (
	"strconv"

	"github.com/valyala/fasttemplate"
)

// Header opens every generated file. It pulls in the request and response
// types and strcmp/strncmp for the dispatch handlers.
const Header = "/** File autogenerated by opack **/\n\n" +
	"#include <onion/request.h>\n\n" +
	"#include <onion/response.h>\n\n" +
	"#include <string.h>\n\n"

// NotProcessed is returned by a dispatch handler when no child matches, so
// the server keeps looking for another handler.
const NotProcessed = "OCS_NOT_PROCESSED"

// LengthSuffix is appended to a file handler's name to name its length
// constant.
const LengthSuffix = "_length"

func tmpl(s string) *fasttemplate.Template {
	return fasttemplate.New(s, "{{", "}}")
}

var (
	signatureTmpl = tmpl("onion_connection_status {{name}}(void *_, onion_request *req, onion_response *res)")

	fileOpenTmpl = tmpl("{{signature}}{\n  static const char data[]={\n")

	fileCloseTmpl = tmpl("};\n" +
		"  onion_response_set_length(res, {{length}});\n" +
		"  return onion_response_write(res, data, sizeof(data));\n" +
		"}\n\n" +
		"const unsigned int {{name}}" + LengthSuffix + " = {{length}};\n\n")

	dirOpenTmpl = tmpl("{{signature}}{\n" +
		"  const char *path=onion_request_get_path(req);\n\n")

	dirBranchTmpl = tmpl("  if (strncmp({{literal}}, path, {{consume}})==0){\n" +
		"    onion_request_advance_path(req, {{consume}});\n" +
		"    return {{target}}(_, req, res);\n" +
		"  }\n")

	fileBranchTmpl = tmpl("  if (strcmp({{literal}}, path)==0){\n" +
		"    return {{target}}(_, req, res);\n" +
		"  }\n")

	dirCloseTmpl = tmpl("  return {{status}};\n}\n\n")
)

// Signature returns the C prototype of the handler called name, without
// the trailing semicolon.
func Signature(name string) string {
	return signatureTmpl.ExecuteString(map[string]interface{}{"name": name})
}

func (w *Writer) execute(t *fasttemplate.Template, m map[string]interface{}) {
	t.Execute(w, m)
}

// WriteHeader writes the comment and includes that start the output.
func (w *Writer) WriteHeader() {
	w.WriteString(Header)
}

// BeginFile opens the handler for a packed file and its data array. Bytes
// go through a ByteArray next, then EndFile.
func (w *Writer) BeginFile(name string) {
	w.execute(fileOpenTmpl, map[string]interface{}{"signature": Signature(name)})
}

// EndFile closes the data array and the handler for a file of length bytes,
// then writes its <name>_length constant.
func (w *Writer) EndFile(name string, length int64) {
	w.execute(fileCloseTmpl, map[string]interface{}{
		"name":   name,
		"length": strconv.FormatInt(length, 10),
	})
}

// BeginDir opens the dispatch handler of a directory.
func (w *Writer) BeginDir(name string) {
	w.execute(dirOpenTmpl, map[string]interface{}{"signature": Signature(name)})
}

// DirBranch routes paths starting with "<child>/" to target, consuming
// len(child)+1 bytes of the request path first.
func (w *Writer) DirBranch(child, target string) {
	w.execute(dirBranchTmpl, map[string]interface{}{
		"literal": Quote(child + "/"),
		"consume": strconv.Itoa(len(child) + 1),
		"target":  target,
	})
}

// FileBranch routes a path exactly equal to child to target.
func (w *Writer) FileBranch(child, target string) {
	w.execute(fileBranchTmpl, map[string]interface{}{
		"literal": Quote(child),
		"target":  target,
	})
}

// EndDir closes a dispatch handler with the fall-through return.
func (w *Writer) EndDir() {
	w.execute(dirCloseTmpl, map[string]interface{}{"status": NotProcessed})
}
