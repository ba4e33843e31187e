// Package templates holds the server-rendered HTML views. The *_templ.go
// files are generated from the .templ sources.
package templates

//go:generate templ generate

// HeaderData is shown in the top bar of every full page.
type HeaderData struct {
	IssuerName string
	ActivePath string
}

func navClass(active, path string) string {
	if active == path {
		return "btn btn-ghost btn-sm btn-active"
	}
	return "btn btn-ghost btn-sm"
}

// toastScript shows toasts from the HX-Trigger header and from the flash cookie.
const toastScript = `<script>
function showToast(d){var c=document.getElementById("toast-container");var e=document.createElement("div");
e.className="alert alert-"+(d.type||"info");e.textContent=d.message;c.appendChild(e);setTimeout(function(){e.remove()},4000)}
document.body.addEventListener("showToast",function(ev){showToast(ev.detail)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(!m)return;
document.cookie="flash_toast=; Max-Age=0; path=/";try{showToast(JSON.parse(decodeURIComponent(m[1])))}catch(e){}})();
</script>`
