package main

import (
	"bytes"
	"html/template"
	"net/url"
)

type templateParam struct {
	Conf      *SiteConf
	PageTitle string
	// A short id such as a tag or "index"
	FileId    string
	// Whether feed.atom is written and can be linked.
	HasAtom   bool
}

func (t templateParam) IdIs(id string) bool {
	return t.FileId == id
}

type indexTemplateParam struct {
	templateParam
	IndexFragment template.HTML
	TagCounts     []tagCount
	Recent        posts
}

type categoryTemplateParam struct {
	templateParam
	categoryWithPosts
}

type postTemplateParam struct {
	templateParam
	*post
	RenderedBody template.HTML
}

const (
	indexTemplate    = "index.html"
	categoryTemplate = "category.html"
	postTemplate     = "post.html"
)

// templateEngine holds the parsed page templates. All of them are parsed up
// front so pages can be rendered from several goroutines.
type templateEngine struct {
	baseURL       string
	templateCache map[string]*template.Template
}

func newTemplateEngine(baseURL string) (*templateEngine, error) {
	te := &templateEngine{
		baseURL:       baseURL,
		templateCache: make(map[string]*template.Template),
	}
	for _, name := range []string{indexTemplate, categoryTemplate, postTemplate} {
		t, err := template.New(name).
			Funcs(te.funcs()).
			Option("missingkey=error").
			ParseFS(assets, templatesDir+"/global.html", templatesDir+"/"+name)
		if err != nil {
			return nil, renderError(name, err)
		}
		te.templateCache[name] = t
	}
	return te, nil
}

func (te *templateEngine) funcs() template.FuncMap {
	return template.FuncMap{
		"postURL":      te.postURL,
		"categoryURL":  te.categoryURL,
		"asset":        te.assetURL,
		"highlightCSS": func() string { return highlightCSS },
		"rssFile":      func() string { return rssFile },
		"atomFile":     func() string { return atomFile },
	}
}

func postLink(baseURL, slug string) string {
	return baseURL + postOutDir + "/" + url.PathEscape(slug) + "/"
}

func (te *templateEngine) postURL(p *post) string {
	return postLink(te.baseURL, p.Slug)
}

func (te *templateEngine) categoryURL(tag string) string {
	return te.baseURL + categoryOutDir + "/" + url.PathEscape(tag) + "/"
}

func (te *templateEngine) assetURL(name string) string {
	return te.baseURL + name
}

func (te *templateEngine) render(name string, data any) ([]byte, error) {
	var b bytes.Buffer
	// global.html is the layout; it pulls in the page's "content" block.
	if err := te.templateCache[name].ExecuteTemplate(&b, "global.html", data); err != nil {
		return nil, renderError(name, err)
	}
	return b.Bytes(), nil
}

func (te *templateEngine) renderIndex(tp templateParam, fragment string, counts []tagCount, recent posts) ([]byte, error) {
	return te.render(indexTemplate, indexTemplateParam{
		templateParam: tp,
		IndexFragment: template.HTML(fragment),
		TagCounts:     counts,
		Recent:        recent,
	})
}

func (te *templateEngine) renderCategory(tp templateParam, c categoryWithPosts) ([]byte, error) {
	return te.render(categoryTemplate, categoryTemplateParam{
		templateParam:     tp,
		categoryWithPosts: c,
	})
}

func (te *templateEngine) renderPost(tp templateParam, p *post) ([]byte, error) {
	return te.render(postTemplate, postTemplateParam{
		templateParam: tp,
		post:          p,
		RenderedBody:  template.HTML(p.Content),
	})
}
