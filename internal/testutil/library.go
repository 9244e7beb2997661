package testutil

// A small but complete module library used by the end-to-end tests. It holds
// one template, one source, one sink and one neutral wrapper.
const (
	TemplateHCL = `
template "Basic" {
  source = [
    "{{ imports }}",
    "import android.app.Activity;",
    "import android.os.Bundle;",
    "public class MainActivity extends Activity {",
    "{{ globals }}",
    "@Override",
    "protected void onCreate(Bundle savedInstanceState) {",
    "super.onCreate(savedInstanceState);",
    "{{ module }}",
    "}",
    "{{ methods }}",
    "}",
    "{{ classes }}",
  ]
  manifest = [
    "<manifest xmlns:android=\"http://schemas.android.com/apk/res/android\" package={{ project }}>",
    "{{ permissions }}",
    "<application android:label=\"bench\">",
    "<activity android:name=\".MainActivity\"/>",
    "{{ components }}",
    "</application>",
    "</manifest>",
  ]
  layout = [
    "<LinearLayout xmlns:android=\"http://schemas.android.com/apk/res/android\">",
    "{{ views }}",
    "</LinearLayout>",
  ]
}
`

	SourceHCL = `
module "ImeiSource" {
  type    = "SOURCE"
  pattern = "OUT"
  imports = ["import android.telephony.TelephonyManager;"]
  module  = [
    "TelephonyManager §tm$ = (TelephonyManager) getSystemService(TELEPHONY_SERVICE);",
    "String sensitiveData_₹ = §tm$.getDeviceId();",
    "{{ module }}",
  ]
  permissions = ["<uses-permission android:name=\"android.permission.READ_PHONE_STATE\"/>"]

  flow {
    statement_signature = "$r3 = virtualinvoke $r2.<android.telephony.TelephonyManager: java.lang.String getDeviceId()>()"
    class_name          = "MainActivity"
    method_signature    = "void onCreate(android.os.Bundle)"
  }
}
`

	SinkHCL = `
module "LogSink" {
  type    = "SINK"
  pattern = "IN"
  imports = ["import android.util.Log;"]
  module  = ["Log.d(\"leak\", sensitiveData_€);"]

  flow {
    statement_signature = "staticinvoke <android.util.Log: int d(java.lang.String,java.lang.String)>(\"leak\", $r3)"
    class_name          = "MainActivity"
    method_signature    = "void onCreate(android.os.Bundle)"
    leaking             = true
    reachable           = true
  }
}
`

	WrapperHCL = `
module "IfWrapper" {
  type    = "NEUTRAL"
  globals = ["private boolean §enabled$ = true;"]
  module  = [
    "if (§enabled$) {",
    "{{ module }}",
    "}",
  ]
}
`
)

// Library returns the sample library laid out the way the default settings
// expect it: modules and templates in separate directories.
func Library() map[string]string {
	return map[string]string{
		"library/templates/basic.hcl":      TemplateHCL,
		"library/modules/sources/imei.hcl": SourceHCL,
		"library/modules/sinks/log.hcl":    SinkHCL,
		"library/modules/neutral/if.hcl":   WrapperHCL,
	}
}
