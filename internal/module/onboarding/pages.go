package onboarding

import "html/template"

// connectedPage notifies the dashboard popup opener, or falls back to a redirect.
var connectedPage = template.Must(template.New("connected").Parse(`<!DOCTYPE html>
<html>
<body style="background:transparent; display:none;">
<script>
  if (window.opener) {
    try {
      window.opener.postMessage('seller_connected', '*');
      window.opener.focus();
    } catch (e) {}
    window.close();
  } else {
    window.location.href = {{.Redirect}};
  }
</script>
</body>
</html>
`))

// errorPage is shown to the operator when onboarding fails.
var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<a href="/">Voltar para Home</a>
</body>
</html>
`))

type connectedData struct {
	Redirect string
}

type errorData struct {
	Title   string
	Message string
}
