//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const appName = "robotshot"

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify shows a toast via the Windows notification center. The image
// template is used when an icon path is supplied.
func Notify(title, body string, opts Options) error {
	icon := strings.TrimSpace(opts.IconPath)
	template := "ToastText02"
	imagePart := ""
	if icon != "" {
		template = "ToastImageAndText02"
		imagePart = fmt.Sprintf(
			`$image = $template.GetElementsByTagName("image").Item(0); $image.SetAttribute("src", %s); `,
			psQuote(icon))
	}
	script := fmt.Sprintf(
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `+
			`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `+
			`$texts = $template.GetElementsByTagName("text"); `+
			`$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; `+
			`$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; `+
			imagePart+
			`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `+
			`$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s); `+
			`$notifier.Show($toast);`,
		template, psQuote(title), psQuote(body), psQuote(appName))
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
