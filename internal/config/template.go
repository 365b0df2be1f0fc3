package config

const configTemplate = `# imeswitch configuration file

# Activation flags passed to ActivateProfile. Either a number or a comma
# separated list of: enable, disable, dontcare, process, session, system
activate_flags: session,dontcare,process,enable

# Profile table overrides (optional)
# Entries replace the built-in profile with the same selector or add new ones.
# Built-in selectors: 0 EN, 1 SG, 2 WR, 3 HI
#profiles:
#  - selector: 4
#    name: JP
#    clsid: "{03B5835F-F03C-411B-9CE2-AA23E1171E36}"
#    langid: 1041
#    label: Microsoft IME

# Observability settings
log_level: warn  # debug, info, warn, error
`
