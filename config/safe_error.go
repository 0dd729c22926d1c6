package config

// SafeErrorMessage hides internal error details from clients in release mode.
// With no config loaded the process is treated as a development build.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
