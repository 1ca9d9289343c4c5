package config

import "slices"

// DefaultManifest is the ordered list of audit result files rendered when
// no manifest is configured. Section order in the report follows it.
var DefaultManifest = []string{
	"apparmor_audit_report.json",
	"chrony_audit.json",
	"cli_warning_banners_audit.json",
	"data_retention_audit.json",
	"filesystem_audit_report.json",
	"fips_audit.json",
	"gdm_security_audit.json",
	"host_based_firewall_audit.json",
	"iptables_audit.json",
	"local_user_group_audit.json",
	"log_file_access_audit.json",
	"logging_audit.json",
	"network_devices_audit.json",
	"network_kernel_modules_audit.json",
	"network_kernel_parameters_audit.json",
	"nftables_audit.json",
	"pam_pkcs11_audit.json",
	"pam_pwquality_audit.json",
	"partition_audit_report.json",
	"password_policy_audit.json",
	"privilege_escalation_audit.json",
	"rsyslog_audit.json",
	"secure_boot_audit_report.json",
	"service_clients_audit.json",
	"software_patch_audit_report.json",
	"special_services_audit.json",
	"ssh_server_audit.json",
	"timesyncd_audit.json",
	"time_sync_audit.json",
	"user_accounts_audit.json",
}

// Manifest presets accepted by ManifestPreset.
const (
	PresetDefault  = "default"
	PresetExtended = "extended"
)

// ManifestPreset returns a copy of the named manifest. The extended preset
// adds the files produced by the optional audit scripts.
func ManifestPreset(name string) ([]string, bool) {
	switch name {
	case "", PresetDefault:
		return slices.Clone(DefaultManifest), true
	case PresetExtended:
		m := make([]string, 0, len(DefaultManifest)+3)
		m = append(m, "additional_software_audit.json", "aide_integrity_check.json")
		m = append(m, DefaultManifest[0])
		m = append(m, "auditd_rules.json")
		return append(m, DefaultManifest[1:]...), true
	default:
		return nil, false
	}
}
